package publish

import (
	"strings"

	"roadmap-cli/internal/statusutil"
	"roadmap-cli/internal/store"
)

// Markdown renders the whole board as a portable markdown document: blocks as
// top-level headings, sections as subheadings, tasks as checkbox list entries
// in display order. The output is stable for a given document, so it diffs
// cleanly when committed alongside a project.
func Markdown(db *store.DB) string {
	var b strings.Builder

	for _, blk := range db.BlockList() {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("# " + blk.Title + "\n")

		for _, sec := range db.BlockSections(blk.ID) {
			b.WriteString("\n## " + sec.Title + "\n\n")

			tasks := db.SectionTasks(sec.ID)
			if len(tasks) == 0 {
				b.WriteString("_(empty)_\n")
				continue
			}
			for _, t := range tasks {
				box := "[ ]"
				if statusutil.IsDone(t.Status) {
					box = "[x]"
				}
				line := "- " + box + " " + t.Title
				var meta []string
				if t.Status != "" && !statusutil.IsDone(t.Status) && t.Status != "todo" {
					meta = append(meta, statusutil.Label(t.Status))
				}
				if t.Due != nil {
					meta = append(meta, "due "+t.Due.String())
				}
				for _, tag := range t.Tags {
					meta = append(meta, "#"+tag)
				}
				if len(meta) > 0 {
					line += " (" + strings.Join(meta, ", ") + ")"
				}
				b.WriteString(line + "\n")

				if desc := strings.TrimSpace(t.Description); desc != "" {
					for _, dl := range strings.Split(desc, "\n") {
						b.WriteString("  " + dl + "\n")
					}
				}
			}
		}
	}

	out := b.String()
	if out == "" {
		return "_(empty board)_\n"
	}
	return out
}
