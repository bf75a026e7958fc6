// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package mgmt

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
)

// Cloud pairs an ARM cloud configuration with its storage endpoint suffix.
type Cloud struct {
	Name          string
	Configuration cloud.Configuration
	Suffix        string
}

var clouds = map[string]Cloud{
	"public": {Name: "public", Configuration: cloud.AzurePublic, Suffix: "core.windows.net"},
	"china":  {Name: "china", Configuration: cloud.AzureChina, Suffix: "core.chinacloudapi.cn"},
	"usgov":  {Name: "usgov", Configuration: cloud.AzureGovernment, Suffix: "core.usgovcloudapi.net"},
}

// CloudNames lists the accepted --cloud values.
func CloudNames() []string {
	return []string{"public", "china", "usgov"}
}

// CloudFor looks up a cloud by name. "" is public.
func CloudFor(name string) (Cloud, error) {
	if name == "" {
		name = "public"
	}
	c, ok := clouds[strings.ToLower(name)]
	if !ok {
		return Cloud{}, fmt.Errorf("unknown cloud %q (valid: %s)", name, strings.Join(CloudNames(), ", "))
	}
	return c, nil
}
