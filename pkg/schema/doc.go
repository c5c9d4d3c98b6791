// Package schema types the free-form attributes of environment places.
//
// A Schema maps attribute names to types. Environment files carry attributes as
// loosely typed JSON scalars; a schema lets a deployment insist that, say, freeSeats
// is a number and zone is a string:
//
//	s, err := schema.ParseTypeMap(map[string]string{
//	    "zone":      "string",
//	    "freeSeats": "int",
//	    "tags":      "[string]",
//	})
//
//	if err := schema.Validate(s, place.Attributes); err != nil {
//	    // *schema.AggregateError listing every offending attribute
//	}
//
// Attributes are optional: Validate only checks the keys that are present. Use
// Require for keys that every place must carry.
package schema
