package model

import "libroom/shared/model"

const (
	TableName  = "announcements"
	EntityName = "announcement"

	FieldID     = "id"
	FieldTitle  = "title"
	FieldBody   = "body"
	FieldActive = "active"
)

type Announcement struct {
	ID     string `db:"id"`
	Title  string `db:"title"`
	Body   string `db:"body"`
	Active bool   `db:"active"`
	model.Metadata
}
