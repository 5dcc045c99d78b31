/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package paginate negotiates page sizes, slices collections and builds
// paginated envelopes.
//
// The pagination block lives under meta.pagination:
//
//	{"count": 100, "current_page": 2, "total_pages": 10, "page_size": 10,
//	 "next": "http://host/items?page=3", "previous": "http://host/items"}
package paginate
