package config

import (
	"github.com/disgoorg/snowflake/v2"
)

func (c *Config) GetBotToken() string {
	return c.v.GetString("bot_token")
}

// Access lists
// -----

// GetMonitorChannelIDs returns the channels whose messages are inspected.
func (c *Config) GetMonitorChannelIDs() []snowflake.ID {
	return parseIDValue(c.v.Get("monitor_channel_ids"))
}

// GetRequiredRoleIDs returns the roles of which a member must hold at least
// one. Empty means every member passes.
func (c *Config) GetRequiredRoleIDs() []snowflake.ID {
	return parseIDValue(c.v.Get("required_role_ids"))
}

// GetAdminUserIDs returns the users allowed to run administrative commands.
func (c *Config) GetAdminUserIDs() []snowflake.ID {
	return parseIDValue(c.v.Get("admin_user_ids"))
}

// Keywords
// -----

func (c *Config) GetKeywordsPath() string {
	return c.v.GetString("keywords_path")
}

func (c *Config) GetKeywordsAutoReload() bool {
	return c.v.GetBool("keywords_auto_reload")
}

// Commands
// -----

func (c *Config) GetCommandPrefix() string {
	prefix := c.v.GetString("command_prefix")
	if prefix == "" {
		return "/"
	}
	return prefix
}

func (c *Config) GetSlashCommandsEnabled() bool {
	return c.v.GetBool("slash_commands_enabled")
}

// GetUnregisterCommands reports whether application commands are removed on
// shutdown.
func (c *Config) GetUnregisterCommands() bool {
	return c.v.GetBool("unregister_commands")
}

func (c *Config) GetLogDir() string {
	return c.v.GetString("log_dir")
}

func (c *Config) GetLogLevel() string {
	return c.v.GetString("log_level")
}

// GetString returns the string value for a given config key
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}
