// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2017 The Decred developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"sort"

	"github.com/rs/zerolog"
	"gitlab.com/jaxnet/nipopow/corelog"
	"gitlab.com/jaxnet/nipopow/node/chainstore"
	"gitlab.com/jaxnet/nipopow/node/mining/cpuminer"
	"gitlab.com/jaxnet/nipopow/node/nipopow"
)

const (
	LogUnitCHAN = "CHAN"
	LogUnitMINR = "MINR"
	LogUnitSTOR = "STOR"
	LogUnitTOOL = "TOOL"
)

// subsystemLoggers maps each subsystem identifier to the function that
// installs its logger. When adding new subsystems, add them here.
var subsystemLoggers = map[string]func(zerolog.Logger){
	LogUnitCHAN: nipopow.UseLogger,
	LogUnitMINR: cpuminer.UseLogger,
	LogUnitSTOR: chainstore.UseLogger,
}

// SupportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func SupportedSubsystems() []string {
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}

	sort.Strings(subsystems)
	return subsystems
}

// SetupLoggers creates the loggers of all subsystems with the configured
// level and outputs. It returns the logger of the command line tools.
func (cfg Config) SetupLoggers() zerolog.Logger {
	level := corelog.ParseLevel(cfg.LogLevel)
	for subsysID, useLogger := range subsystemLoggers {
		useLogger(corelog.New(subsysID, level, cfg.Log))
	}
	return corelog.New(LogUnitTOOL, level, cfg.Log)
}

// SetLogLevel changes the level of one subsystem. Unknown subsystems are
// ignored.
func (cfg Config) SetLogLevel(subsysID, logLevel string) {
	useLogger, ok := subsystemLoggers[subsysID]
	if !ok {
		return
	}
	useLogger(corelog.New(subsysID, corelog.ParseLevel(logLevel), cfg.Log))
}
