package models

import "time"

type Download struct {
	ID        int       `db:"id" json:"id"`
	GrabID    string    `db:"grab_id" json:"grab_id"`
	SourceURL string    `db:"source_url" json:"source_url"`
	Title     string    `db:"title" json:"title"`
	Filename  string    `db:"filename" json:"filename"`
	FormatID  string    `db:"format_id" json:"format_id"`
	Ext       string    `db:"ext" json:"ext"`
	ABR       float64   `db:"abr" json:"abr"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
