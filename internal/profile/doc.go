// Package profile stores named hubctl profiles.
//
// Profiles live in ~/.config/hubctl/profiles.yaml:
//
//	current-profile: work
//	profiles:
//	  - name: work
//	    settings:
//	      endpoint: https://api.smartthings.com
//	      indent: 2
//	      output: yaml
//	      token: 00000000-0000-0000-0000-000000000000
//	    defaults:
//	      defaultChannel: 4d6f2ad5-0d68-4c8b-a0a4-d0a6e9a3a5b1
//
// Settings are set by the user. Defaults are remembered by hubctl when the user
// agrees to save a selection, and "profile reset" clears them.
//
// The active profile is chosen in this order:
//  1. --profile flag
//  2. HUBCTL_PROFILE environment variable
//  3. current-profile from profiles.yaml
//  4. "default"
//
// Storage is safe for concurrent use within one process. Concurrent hubctl
// processes writing the same file are not coordinated.
package profile
