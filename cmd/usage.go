package cmd

import (
	"VaultSync/internal/constants"
	"VaultSync/internal/paths"
	"VaultSync/internal/version"
	"fmt"
	"strings"
)

// GetUsage returns usage information as a string.
func GetUsage() string {
	var sb strings.Builder
	printStr := func(s string) {
		sb.WriteString(s + "\n")
	}

	appCmd := version.CommandName
	printStr(fmt.Sprintf("Usage: {{_UserCommand_}}%s{{|-|}} [{{_UserCommand_}}<Flags>{{|-|}}]", appCmd))
	printStr("")
	printStr(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", version.ApplicationName, version.Version))
	printStr("Fetches a secret listing from a vault tool and merges it into an env file.")
	printStr("For regular usage you can run without providing any options.")
	printStr("")
	printStr(fmt.Sprintf("The vault tool is run as '{{_UserCommand_}}<tool> %s %s <vault-id> %s %s{{|-|}}'.",
		constants.VaultListCommand, constants.VaultListSubcommand, constants.VaultOutputFlag, constants.VaultOutputFormat))
	printStr("Fetched keys already in the env file are rewritten in place, new keys are appended,")
	printStr("and every other line is left untouched.")
	printStr("")
	printStr(fmt.Sprintf("Defaults: tool '{{_Program_}}%s{{|-|}}', vault id '{{_Vault_}}%s{{|-|}}', env file '{{_File_}}%s{{|-|}}'.",
		constants.DefaultVaultTool, constants.DefaultVaultID, constants.DefaultEnvFileName))
	printStr(fmt.Sprintf("They can be changed in '{{_File_}}%s{{|-|}}' or with the flags below.", paths.GetConfigFilePath()))
	printStr("")
	printStr("Flags:")
	sb.WriteString(NewFlagSet().FlagUsages())
	return sb.String()
}
