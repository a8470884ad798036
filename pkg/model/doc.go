// Package model loads static schema models from YAML and converts them into
// schema.SchemaDefinition values.
//
// A model is the hand maintained counterpart of an exported database
// script. Converting it with Model.SchemaDefinition yields the same shape the
// parser produces, so a model can be compared against a live export with
// schemadiff.Compare.
//
// Conversion rules:
//   - tables with a relation become edges, all others tables
//   - tables are SCHEMAFULL unless marked schemaless
//   - permission actions missing from a permissions block default to FULL,
//     and "all" overrides every action
//   - a field is required when it has neither default nor default_always and
//     is not skipped
//   - field types are parsed with parser.ParseType and tags[*] names become
//     wildcard fields
package model
