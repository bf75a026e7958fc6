// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/tfctl/stctl/internal/log"
)

// DumpSchema writes the sorted attribute names of Row, the names accepted by
// --attrs and --sort. If w is nil, os.Stdout is used.
func DumpSchema(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w, "Attributes available to the --attrs and --sort flags.")
	fmt.Fprintln(w, "")

	names := Attributes()
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

// Attributes returns every Row attribute name in field order.
func Attributes() []string {
	return schemaNames(reflect.TypeOf(Row{}))
}

// schemaNames collects the json tag names of typ's exported fields.
func schemaNames(typ reflect.Type) []string {
	names := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("json")
		if !ok {
			log.Debugf("field %s has no json tag", field.Name)
			continue
		}

		name, _, _ := strings.Cut(tagValue, ",")
		if name == "" || name == "-" {
			continue
		}
		names = append(names, name)
	}
	return names
}
