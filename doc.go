// Package hydrex hydrates search-engine documents into typed domain objects.
//
// A mapping table binds every logical index to a domain key; a factory table
// binds every domain key to a function building the domain object from a raw
// document payload. Search results keep the engine's ranking order and carry
// their score and highlight fragments next to the hydrated model.
//
// # Facade API
//
//	client, _ := hydrex.New(
//	    hydrex.WithElasticsearch("http://localhost:9200"),
//	    hydrex.WithMapping("todo", `App\Todo`),
//	    hydrex.WithType[Todo](`App\Todo`),
//	)
//	todos := client.Index("todo")
//	model, _ := todos.GetModel(ctx, "42")
//	results, _ := todos.CreateSearch(`{"query":{"match_all":{}}}`, hydrex.SearchOptions{Size: 20}).Do(ctx)
//
// # Typed API
//
//	idx := hydrex.NewIndex[Todo](client, "todo")
//	todo, _ := idx.Get(ctx, "42")
//	hits, _ := idx.Search(ctx, "@title:milk", hydrex.SearchOptions{})
//
// Domain keys may be written with or without one leading `\`; both spellings
// resolve to the same entry.
package hydrex
