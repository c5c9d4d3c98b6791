// Package environment holds the catalog of places loaded from an environment file.
//
// An environment file is a JSON object with four arrays: places, edges, logicalPlaces
// and views. A file missing any of them is rejected whole; a catalog is only ever
// replaced or cleared, never merged. Reads on an empty catalog return empty results.
package environment
