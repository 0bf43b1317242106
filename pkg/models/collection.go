package models

// RootID is the id of the root collection.
const RootID int64 = 0

// Statistics are the item counters the server reports for a collection.
type Statistics struct {
	Count  int64 `json:"count"`
	Unread int64 `json:"unread"`
	Size   int64 `json:"size"`
}

// NewStatistics returns statistics with every counter unknown.
func NewStatistics() Statistics {
	return Statistics{Count: -1, Unread: -1, Size: -1}
}

type Collection struct {
	Entity
	Name             string      `json:"name,omitempty"`
	Resource         string      `json:"resource,omitempty"`
	ContentMimeTypes []string    `json:"mimeTypes,omitempty"`
	Rights           Rights      `json:"rights"`
	CachePolicy      CachePolicy `json:"cachePolicy"`
	Virtual          bool        `json:"virtual,omitempty"`
	Statistics       Statistics  `json:"statistics"`
}

// NewCollection returns a collection with the given id and default settings.
func NewCollection(id int64) Collection {
	return Collection{
		Entity:      Entity{ID: id},
		CachePolicy: NewCachePolicy(),
		Statistics:  NewStatistics(),
	}
}

// RootCollection returns the root of the collection tree.
func RootCollection() Collection {
	return NewCollection(RootID)
}

// IsRoot reports whether c is the root collection.
func (c Collection) IsRoot() bool {
	return c.ID == RootID && c.RemoteID == ""
}
