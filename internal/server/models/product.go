package models

// Product is a read-only catalog entry. Fields holds the ordered list of
// column names the product exposes; it is stored serialized and decoded
// by the repository on read.
type Product struct {
	ID           int64
	Name         string
	DataCategory string
	RecordCount  int64
	Fields       []string
	Description  string
}
