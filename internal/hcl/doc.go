// Package hcl provides the HCL implementation of the config.Loader
// interface. It is responsible for parsing delay model specifications
// written in HCL and translating their `op` blocks into registry records.
package hcl
