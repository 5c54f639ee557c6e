// Package pom reads and rewrites the dependency list of a Maven pom.xml.
//
// The document keeps the original file bytes and edits them in place, so
// everything outside the touched <dependency> elements (comments, ordering,
// attribute quoting, indentation) survives a rewrite byte for byte.
package pom

import (
	"fmt"
	"strings"
)

// Dependency is one <dependency> entry of a pom.
type Dependency struct {
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
	Version    string `json:"version,omitempty"`
	// Classifier tells apart artifacts sharing coordinates, such as test jars.
	Classifier string `json:"classifier,omitempty"`
}

// Key returns the group/artifact coordinates of the dependency.
func (d Dependency) Key() Key {
	return Key{GroupID: d.GroupID, ArtifactID: d.ArtifactID}
}

// String returns group:artifact:version, or group:artifact when unversioned.
func (d Dependency) String() string {
	if d.Version == "" {
		return d.Key().String()
	}
	return d.Key().String() + ":" + d.Version
}

// Key identifies a dependency by its Maven coordinates.
type Key struct {
	GroupID    string
	ArtifactID string
}

// String returns group:artifact.
func (k Key) String() string {
	return k.GroupID + ":" + k.ArtifactID
}

// IsZero reports whether the key is empty.
func (k Key) IsZero() bool {
	return k.GroupID == "" && k.ArtifactID == ""
}

// ParseKey parses "group:artifact". A trailing ":version" is ignored.
func ParseKey(s string) (Key, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return Key{}, fmt.Errorf("invalid coordinates %q: want group:artifact", s)
	}
	return Key{GroupID: parts[0], ArtifactID: parts[1]}, nil
}

// MatchMode selects which coordinates decide whether a dependency in the
// file is the same dependency as one in an edited list.
type MatchMode string

const (
	// MatchCoordinates matches on groupId and artifactId.
	MatchCoordinates MatchMode = "coordinates"
	// MatchGroup matches on groupId only. Two artifacts of one group are
	// treated as the same dependency.
	MatchGroup MatchMode = "group"
)

// IsValid returns true if the mode is known.
func (m MatchMode) IsValid() bool {
	switch m {
	case MatchCoordinates, MatchGroup:
		return true
	default:
		return false
	}
}

// Identity returns the key that decides retention under this mode.
func (m MatchMode) Identity(d Dependency) Key {
	if m == MatchGroup {
		return Key{GroupID: d.GroupID}
	}
	return d.Key()
}
