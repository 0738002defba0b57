package dnd

import "strings"

// Kind tags a draggable identifier as a task or a section. Parsing the
// string-prefixed form happens once at the input-adapter boundary; everything
// past that point works with the tagged ItemID.
type Kind string

const (
	KindTask    Kind = "task"
	KindSection Kind = "section"
)

// ItemID identifies one draggable item. The zero value means "no item"
// (e.g. a drop outside any droppable).
type ItemID struct {
	Kind Kind
	ID   string
}

func (id ItemID) IsZero() bool {
	return strings.TrimSpace(id.ID) == ""
}

func (id ItemID) String() string {
	if id.IsZero() {
		return ""
	}
	return string(id.Kind) + "-" + id.ID
}

// ParseItemID parses the wire form ("task-<id>" / "section-<id>") used by
// callers that only have flat string identifiers. Unrecognized prefixes and
// empty ids are rejected.
func ParseItemID(s string) (ItemID, bool) {
	s = strings.TrimSpace(s)
	for _, k := range []Kind{KindTask, KindSection} {
		prefix := string(k) + "-"
		if strings.HasPrefix(s, prefix) && len(s) > len(prefix) {
			return ItemID{Kind: k, ID: s[len(prefix):]}, true
		}
	}
	return ItemID{}, false
}

// TaskID and SectionID are constructors for the two identifier kinds.
func TaskID(id string) ItemID    { return ItemID{Kind: KindTask, ID: strings.TrimSpace(id)} }
func SectionID(id string) ItemID { return ItemID{Kind: KindSection, ID: strings.TrimSpace(id)} }
