// Package config provides configuration types and loading for vnxctl.
//
// # Configuration File
//
// Settings are read from a TOML file, /etc/vnxctl/config.toml by default:
//
//	[array]
//	naviseccli = "/opt/Navisphere/bin/naviseccli"
//	sp_a = "10.0.0.1"
//	sp_b = "10.0.0.2"
//	security_file = "secfile"   # relative to the config directory
//	timeout = "60s"
//
//	[storage_group]
//	max_luns_per_group = 255
//	attach_retry_limit = 5
//	hlu_policy = "lowest"       # or "random"
//
//	[state]
//	dir = "/var/lib/vnxctl"
//	metrics_textfile = ""
//
// A missing file yields Default(). Either username/password or a security
// file must be set for commands that talk to the array.
//
// # Validation
//
// Config implements Validate() to check for required fields and valid
// values. Load validates after parsing.
package config
