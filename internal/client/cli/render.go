package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/gamekeeper/internal/client/catalog"
)

const spinner = "uploading…"

// renderCatalog prints the form line and the games table.
func renderCatalog(w io.Writer, st catalog.State) {
	if st.Loading {
		fmt.Fprintln(w, "Loading games...")
		return
	}

	label := "Add"
	if st.EditingID != nil {
		label = "Update"
	}
	fmt.Fprintf(w, "Title: %q [%s]", st.Title, label)
	if st.EditingID != nil {
		fmt.Fprintf(w, " [cancel] (editing #%d)", *st.EditingID)
	}
	fmt.Fprintln(w, " [logout]")

	if len(st.Games) == 0 {
		fmt.Fprintln(w, "No games yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tIMAGE\tTITLE\t\t")
	for _, g := range st.Games {
		image := "[no image]"
		if g.HasImage() {
			image = *g.ImageURL
		}
		upload := "[upload]"
		if st.UploadingID != nil && *st.UploadingID == g.ID {
			upload = spinner
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t[delete]\n", g.ID, image, g.Title, upload)
	}
	_ = tw.Flush()
}
