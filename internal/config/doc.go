// Package config loads the application configuration.
//
// Configuration comes from three layers, later layers overriding earlier
// ones: built-in defaults, a TOML file and PSGA_-prefixed environment
// variables.
//
//	[logging]
//	level = "debug"          # PSGA_LOG_LEVEL
//
//	[dispatcher]
//	exit_event = "Exit"
//	menu_delimiter = "::"
//	recover_from_panic = true
//	metrics = false
//
//	[rest]
//	addr = "127.0.0.1:8000"  # PSGA_REST_ADDR
//	base_url = "http://127.0.0.1:8000/"
//	retry_max = 2
//	timeout = "5s"
//
//	[ui.keys]
//	F5 = "-REFRESH-"
package config
