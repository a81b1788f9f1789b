package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"shelfscan/internal/item"
	"shelfscan/internal/scan"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isTerminal(stream any) bool {
	file, ok := stream.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// errFailed signals a failure already printed for the user.
var errFailed = errors.New("operation failed")

func reportFailure(w io.Writer, res scan.Result) error {
	if res.Failure == nil {
		return nil
	}
	fmt.Fprintf(w, "%s: %s\n", res.Failure.Message.Title, res.Error())
	return errFailed
}

type itemView struct {
	Barcode   string   `json:"barcode"`
	Kind      string   `json:"kind"`
	Title     string   `json:"title"`
	Author    string   `json:"author,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
	Maker     string   `json:"maker,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	ImageURL  string   `json:"image_url,omitempty"`
	ScannedAt string   `json:"scanned_at"`
}

func newItemView(it item.ScannedItem) itemView {
	f := it.Fields()
	view := itemView{
		Barcode:   f.Barcode,
		Kind:      string(it.Kind()),
		Title:     f.Title,
		Price:     f.Price,
		ImageURL:  f.ImageURL,
		ScannedAt: f.ScannedAt.Format("2006-01-02 15:04:05"),
	}
	switch d := f.Details.(type) {
	case item.Book:
		view.Author = d.Author
		view.Publisher = d.Publisher
	case item.Product:
		view.Maker = d.Maker
	}
	return view
}

func renderItem(it item.ScannedItem) string {
	v := newItemView(it)
	pairs := [][2]string{
		{"Barcode", v.Barcode},
		{"Kind", v.Kind},
		{"Title", v.Title},
	}
	if v.Kind == string(item.KindBook) {
		pairs = append(pairs, [2]string{"Author", v.Author}, [2]string{"Publisher", v.Publisher})
	} else {
		pairs = append(pairs, [2]string{"Maker", v.Maker})
	}
	price := ""
	if v.Price != nil {
		price = strconv.FormatFloat(*v.Price, 'f', -1, 64)
	}
	pairs = append(pairs, [2]string{"Price", price}, [2]string{"Image", v.ImageURL})
	return renderKeyValues(pairs)
}
