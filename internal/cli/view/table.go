package view

import (
	"fmt"
	"io"
	"text/tabwriter"

	"Linkshelf/internal/cli/model"
)

// Table renders bookmarks as aligned columns.
type Table struct {
	Names Names
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
}

func (t Table) Render(w io.Writer, bookmarks []model.Bookmark) error {
	if len(bookmarks) == 0 {
		_, err := fmt.Fprintln(w, "• no bookmarks")
		return err
	}
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tTITLE\tURL\tTAGS\tCOLLECTION\tCREATED")
	for _, b := range bookmarks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, truncate(b.Title, 40), truncate(b.URL, 50), tagNames(b.Tags), t.Names.collection(b), b.CreatedAt.Short())
	}
	return tw.Flush()
}

func Users(w io.Writer, users []model.User) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tGENDER\tCREATED")
	for _, u := range users {
		gender := u.Gender
		if gender == "" {
			gender = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, gender, u.CreatedAt.Short())
	}
	return tw.Flush()
}

func Tags(w io.Writer, tags []model.Tag) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tNAME\tCOLOR")
	for _, t := range tags {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", t.ID, t.Name, t.Color)
	}
	return tw.Flush()
}

func Collections(w io.Writer, cols []model.Collection) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tNAME\tUSER\tDESCRIPTION")
	for _, c := range cols {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", c.ID, c.Name, c.UserID, truncate(deref(c.Description), 50))
	}
	return tw.Flush()
}

func Recommendations(w io.Writer, recs []model.Recommendation) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "• no similar bookmarks")
		return err
	}
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tSCORE\tTITLE\tURL\tWHY")
	for _, r := range recs {
		why := ""
		if len(r.SimilarityReasons) > 0 {
			why = r.SimilarityReasons[0]
		}
		fmt.Fprintf(tw, "%d\t%.2f\t%s\t%s\t%s\n", r.ID, r.SimilarityScore, truncate(r.Title, 40), truncate(r.URL, 50), why)
	}
	return tw.Flush()
}

// Analysis prints the fields extracted from a page.
func Analysis(w io.Writer, a model.URLAnalysis) error {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "url\t%s\n", a.URL)
	fmt.Fprintf(tw, "title\t%s\n", orDash(deref(a.Title)))
	fmt.Fprintf(tw, "description\t%s\n", orDash(truncate(deref(a.Description), 100)))
	fmt.Fprintf(tw, "summary\t%s\n", orDash(truncate(deref(a.Summary), 100)))
	fmt.Fprintf(tw, "content length\t%d\n", a.ContentLength)
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
