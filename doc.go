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

// Package ding implements indexing and searching of German-English
// dictionaries in the DING format.
//
// A DING dictionary is a UTF-8 text file with one entry per line. The German
// and English sides of an entry are separated by "::", numbered senses by '|'
// and synonyms within a sense by ';'. Grammar and context annotations appear
// in braces and brackets.
//
//	# Version :: 1.9
//	Haus {n}; Gebäude {n} | Familie {f} :: house; building | family
//
// [Install] copies a dictionary into a root directory and builds a prefix
// index over its words. [Open] opens an installed dictionary for searching.
//
//	err := ding.Install(ctx, root, "de-en.txt", nil)
//	...
//	d, err := ding.Open(ctx, root, nil)
//	...
//	defer d.Close()
//	result, _, err := d.Query(ctx, "Regensburg", 10)
//
// The DING dictionary is available from https://dict.tu-chemnitz.de/.
package ding
