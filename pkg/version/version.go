// Copyright 2024 The Solaris Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package version

import "strings"

// The values are set at the build time via -ldflags
var (
	// Version is the build version tag
	Version = "v0.0.0-dev"
	// GitCommit is the commit id the build is made from
	GitCommit = ""
	// BuildDate is the date when the build was made
	BuildDate = ""
)

// BuildVersionString returns the human readable build description
func BuildVersionString() string {
	var sb strings.Builder
	sb.WriteString(Version)
	if GitCommit != "" {
		sb.WriteString(" commit=")
		sb.WriteString(GitCommit)
	}
	if BuildDate != "" {
		sb.WriteString(" built=")
		sb.WriteString(BuildDate)
	}
	return sb.String()
}
