// Package init triggers VCS provider registration via import side-effects.
//
//	import _ "github.com/sanix-darker/purr/internal/vcs/init"
package init

import (
	_ "github.com/sanix-darker/purr/internal/vcs/github"
)
