package models

// DocumentKind is the artifact content type.
type DocumentKind string

const (
	DocumentKindText         DocumentKind = "text"
	DocumentKindCode         DocumentKind = "code"
	DocumentKindSheet        DocumentKind = "sheet"
	DocumentKindImage        DocumentKind = "image"
	DocumentKindPresentation DocumentKind = "presentation"
)

// LocalUserID is the fixed owner for all documents. The field exists for
// multi-tenant compatibility only; this system is single-user.
const LocalUserID = "local-user"

// Document is the durable record of a generated artifact. Latest wins:
// saving the same id again overwrites content while preserving CreatedAt.
type Document struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Kind    DocumentKind `json:"kind"`
	UserID  string       `json:"userId"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}
