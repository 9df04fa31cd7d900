// Package config handles configuration management for realmctl.
//
// Two files are involved. config.toml maps game names to installations:
//
//	[wotlk]
//	directory = "~/Games/wotlk"
//	realmlist_rel_path = "Data/enUS/realmlist.wtf"
//	realmlist = "logon.chromiecraft.com"
//	launch_cmd = "lutris lutris:rungameid/3"
//	username = "me"
//	password = "secret"
//	clear_cache = true
//
// settings.toml holds process-wide knobs layered over embedded defaults and
// REALMCTL_* environment variables. Both are loaded with koanf and decoded
// with mapstructure.
package config
