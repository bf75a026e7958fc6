// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/stctl/internal/mgmt"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks combinations that single-flag validators cannot.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Bool("run") && c.String("output") != "text" {
		return errors.New("--output cannot be combined with --run")
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "yaml"}
	s, _ := value.(string)
	if !slices.Contains(validOutputFlagValues, s) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func AuthModeValidator(value any) error {
	var validAuthModes = []string{"key", "login"}
	s, _ := value.(string)
	if !slices.Contains(validAuthModes, strings.ToLower(s)) {
		return fmt.Errorf("must be one of %v", validAuthModes)
	}
	return nil
}

func CloudValidator(value any) error {
	s, _ := value.(string)
	_, err := mgmt.CloudFor(s)
	return err
}

// TTLValidator bounds token lifetimes to between one minute and seven days.
func TTLValidator(value any) error {
	d, ok := value.(time.Duration)
	if !ok {
		return errors.New("not a duration")
	}
	if d < time.Minute || d > 7*24*time.Hour {
		return fmt.Errorf("must be between 1m and 168h, got %s", d)
	}
	return nil
}
