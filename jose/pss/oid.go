// Copyright (c) 2025-present deep.rent GmbH (https://deep.rent)
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

package pss

import "github.com/deep-rent/rsapss/internal/der"

// Fixed object identifiers used by the RSASSA-PSS AlgorithmIdentifier. These
// are plain package-level values rather than anything requiring
// synchronization: Go initializes package-level vars exactly once, before
// any other code in the program runs, so they are immutable and safe to
// share across goroutines without further ceremony.
var (
	oidRSASSAPSS = der.OID{1, 2, 840, 113549, 1, 1, 10}
	oidMGF1      = der.OID{1, 2, 840, 113549, 1, 1, 8}
	oidSHA256    = der.OID{2, 16, 840, 1, 101, 3, 4, 2, 1}
	oidSHA384    = der.OID{2, 16, 840, 1, 101, 3, 4, 2, 2}
	oidSHA512    = der.OID{2, 16, 840, 1, 101, 3, 4, 2, 3}
)
