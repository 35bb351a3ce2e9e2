/*
Copyright © 2023 sanix-darker <s4nixd@gmail.com>
*/
package models

// FlagStruct describes a string command-line flag shared by several
// commands.
type FlagStruct struct {
	Label        string
	Short        string
	Description  string
	DefaultValue string
}
