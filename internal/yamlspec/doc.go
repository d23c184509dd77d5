// Package yamlspec implements config.Loader for YAML and JSON delay model
// specifications. Both encodings share the config.Document shape:
//
//	operations:
//	  - op: add
//	    fixed: 2
//	  - op: sub
//	    alias: add
package yamlspec
