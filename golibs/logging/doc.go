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
Package logging provides the leveled logging facade detached from a concrete
logging engine. The application code writes to the facade only, so switching
the engine doesn't touch the components, and the logs of the different
binaries stay uniform.

The default engine prints to stdout. An alternative one may be plugged via
SetConfig, see the zaplog sub-package for the zap-backed implementation.
*/
package logging
