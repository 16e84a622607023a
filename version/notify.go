package version

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/vidpool/vidpool/color"
	"github.com/vidpool/vidpool/constant"
	"github.com/vidpool/vidpool/icon"
	"github.com/vidpool/vidpool/key"
	"github.com/vidpool/vidpool/log"
	"github.com/vidpool/vidpool/style"
	"github.com/vidpool/vidpool/util"
)

// Notify prints an alert when a newer release exists. Failures are logged and otherwise ignored.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()
	if err != nil {
		log.Debugf("version check: %v", err)
		return
	}

	if !Newer(latest, constant.Version) {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/vidpool/vidpool/releases/tag/v"+latest),
	)
}

// Newer reports whether candidate is a strictly greater version than current.
// Unparseable versions are never newer.
func Newer(candidate, current string) bool {
	comp, err := Compare(candidate, current)
	return err == nil && comp > 0
}
