// Package config loads application configuration from an optional
// config.yaml file and ENROL_* environment variables, with environment
// taking precedence and defaults filling the rest. Chart window bounds
// use pointers so an explicit zero (a valid window magnitude) survives
// the merge.
package config
