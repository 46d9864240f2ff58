// Package config loads and validates navstack.json, the project
// configuration file for the navstack server.
//
// Configuration is resolved in three layers: built-in defaults, the JSON
// file, then environment variable overrides (NAVSTACK_* and standard AWS
// variables). Missing fields fall back to defaults, so a minimal file like
//
//	{
//	  "name": "shop",
//	  "routes": "routes.yaml"
//	}
//
// is enough to run the server on localhost:4600 with the in-memory
// snapshot store.
package config
