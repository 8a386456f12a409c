// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package keyword

import "github.com/ianlewis/go-ding/internal/utf8util"

// commonWords are upper case German and English stop words that are neither
// indexed nor searched for.
var commonWords = map[string]struct{}{
	// English
	"AND": {}, "BUT": {}, "THE": {}, "ARE": {}, "WAS": {},
	"THEN": {}, "THEM": {}, "ALSO": {},
	"WHICH": {},

	// German
	"VON": {}, "DER": {}, "DIE": {}, "DAS": {}, "UND": {}, "ICH": {},
	"SIE": {}, "VOM": {}, "WIR": {}, "WAR": {}, "IHR": {}, "IHM": {},
	"IHN": {}, "HAT": {}, "DES": {}, "MIR": {}, "FÜR": {},
	"ABER": {}, "DENN": {}, "ZWAR": {}, "SEIN": {}, "SIND": {}, "BIST": {},
	"SEID": {}, "ODER": {}, "MEIN": {}, "IHRE": {}, "EURE": {},
	"HABEN": {}, "MEINE": {}, "IHNEN": {}, "IHREN": {}, "IHREM": {},
}

// IsCommon returns true if the upper case word w is too common to be useful
// for searching. Words of two codepoints or fewer are always common.
func IsCommon(w string) bool {
	if codepoints(w) <= 2 {
		return true
	}
	_, ok := commonWords[w]
	return ok
}

// codepoints counts the codepoints in s, falling back to the byte length for
// malformed text.
func codepoints(s string) int {
	n, err := utf8util.CountSequences(s)
	if err != nil {
		return len(s)
	}
	return n
}
