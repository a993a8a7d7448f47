package models

// Link is a typed relationship between two documents. Undirected in meaning,
// directed in storage: Doc1 is always the earlier-issued document.
type Link struct {
	Doc1 int64
	Doc2 int64
	Type string
}

// DesiredLink is one entry of a client-submitted link set to reconcile against
// storage: a link type and whether it should exist after reconciliation.
type DesiredLink struct {
	Type  string
	Valid bool
}

// LinkedDocument is a link as seen from one document: the id is always the
// other side, regardless of which side the row stores first.
type LinkedDocument struct {
	DocumentID int64
	Type       string
}
