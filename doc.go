// Package itemcache implements a provider-agnostic cache of typed items
// with optional absolute expiration.
//
// Components:
//   - Item: closed set of storable variants (String, Binary, JSON).
//   - Provider: string-keyed byte store with TTL (Redis, BigCache, Ristretto, ttlcache).
//   - Envelope: the JSON object written per key, carrying the variant tag,
//     the absolute expiration and the encoded value.
//
// Stored format:
//
//	{"info":{"type":"binary","expiration":1700000000000},"value":"aGVsbG8="}
//
// Expiration is absolute (unix milliseconds). Put converts it into a TTL in
// whole seconds for the provider; an expiration already reached is written
// with TTL 0, which providers treat as "expire now".
//
// Usage:
//
//	p, _ := redis.NewFromURL("redis://localhost:6379/0")
//	c, _ := itemcache.New(itemcache.Options{Provider: p})
//	defer c.Close(ctx)
//
//	_ = c.Put(ctx, "greeting", itemcache.String("hi"), itemcache.PutOptions{
//	    Expiration: time.Now().Add(time.Hour),
//	})
//	item, ok, err := c.Get(ctx, "greeting", itemcache.GetOptions{})
package itemcache
