// Package config defines the format-agnostic model of a delay model
// specification file, along with the Loader interface implemented by each
// supported encoding.
//
// A loader decodes a file into RawRecords, one per declared operation, and
// converts them into registry records with RawRecord.Record. Concrete
// implementations live in separate packages (internal/hcl, internal/yamlspec).
// Any failure to decode the file is reported as a *ParseError, which is kept
// distinct from the semantic validation errors of the registry.
package config
