// Copyright 2023 The acquirecloud Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
/*
Package errors defines the common error classes shared by all the components
of the module. The sentinel variables below describe a situation, not a place
where it happened, so they may be mapped to an API response or shown to a
user directly.

Callers should wrap the variables into their own context via fmt.Errorf and the
%w verb, and test the result with the Is function.
*/
package errors
