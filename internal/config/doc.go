// Package config loads berdump configuration files.
//
// A configuration file is YAML. Every key is optional; missing keys keep
// the values from DefaultConfig, and unknown keys are an error:
//
//	logging:
//	  level: debug
//	  format: json
//	decode:
//	  format: table
//	  ldap: true
//	syntax:
//	  - class: context
//	    number: 3
//	    rule: integer
//	  - class: private
//	    number: 1
//	    rule: sequence
//
// # Environment Variables
//
// ${VAR} is replaced with the value of VAR before parsing, and
// ${VAR:-default} falls back to default when VAR is unset or empty.
//
// # Syntax Entries
//
// Each syntax entry adds one tag interpretation to the table used by the
// decode command, on top of the LDAP table when decode.ldap is set. The
// rule is one of boolean, integer, string, sequence, null or oid.
package config
