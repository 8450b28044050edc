// Package formats provides parsers for the PureParts model file formats.
package formats

// Note: OBJ (text meshes) is implemented in obj.go
// Note: MODEL (binary LOD1/LOD3 meshes) is implemented in model.go
