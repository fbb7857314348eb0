package content

// Resolver resolves link objects inside entry fields against the entries and
// assets shipped with one response. Top-level items are indexed too, since
// entries may link each other.
type Resolver struct {
	entries map[string]Entry
	assets  map[string]Asset
}

func NewResolver(resp *EntriesResponse) *Resolver {
	r := &Resolver{
		entries: make(map[string]Entry),
		assets:  make(map[string]Asset),
	}
	for _, e := range resp.Items {
		r.entries[e.Sys.ID] = e
	}
	for _, e := range resp.Includes.Entry {
		r.entries[e.Sys.ID] = e
	}
	for _, a := range resp.Includes.Asset {
		r.assets[a.Sys.ID] = a
	}
	return r
}

// Entry resolves a field value that is either an inlined entry or a
// {sys: {type: Link, linkType: Entry, id}} reference.
func (r *Resolver) Entry(v any) (Entry, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return Entry{}, false
	}
	sys, ok := m["sys"].(map[string]any)
	if !ok {
		return Entry{}, false
	}

	if sys["type"] == "Link" {
		if sys["linkType"] != "Entry" {
			return Entry{}, false
		}
		id, _ := sys["id"].(string)
		e, ok := r.entries[id]
		return e, ok
	}

	// Inlined entry (the API does this for unresolvable or preview data).
	id, _ := sys["id"].(string)
	fields, _ := m["fields"].(map[string]any)
	return Entry{Sys: Sys{ID: id, Type: "Entry"}, Fields: fields}, fields != nil
}

// Asset resolves an asset link the same way.
func (r *Resolver) Asset(v any) (Asset, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return Asset{}, false
	}
	sys, ok := m["sys"].(map[string]any)
	if !ok {
		return Asset{}, false
	}

	if sys["type"] == "Link" {
		if sys["linkType"] != "Asset" {
			return Asset{}, false
		}
		id, _ := sys["id"].(string)
		a, ok := r.assets[id]
		return a, ok
	}

	id, _ := sys["id"].(string)
	fields, _ := m["fields"].(map[string]any)
	return Asset{Sys: Sys{ID: id, Type: "Asset"}, Fields: fields}, fields != nil
}

// EntryList resolves a field value holding an array of entry links,
// dropping anything that cannot be resolved.
func (r *Resolver) EntryList(v any) []Entry {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Entry, 0, len(list))
	for _, item := range list {
		if e, ok := r.Entry(item); ok {
			out = append(out, e)
		}
	}
	return out
}

// AssetList resolves a field value holding an array of asset links.
func (r *Resolver) AssetList(v any) []Asset {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Asset, 0, len(list))
	for _, item := range list {
		if a, ok := r.Asset(item); ok {
			out = append(out, a)
		}
	}
	return out
}

// String reads a string field, returning "" when absent or mistyped.
func (e Entry) String(key string) string {
	s, _ := e.Fields[key].(string)
	return s
}

// Float reads a numeric field, returning 0 when absent or mistyped.
func (e Entry) Float(key string) float64 {
	f, _ := e.Fields[key].(float64)
	return f
}
