// Copyright 2014-2022 Google Inc.
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

package lazytree

// Visitor is called by TraverseSoft and TraverseHard once per visited key,
// in ascending order.  Visit must not modify the tree being traversed.
type Visitor[K any] interface {
	Visit(key K)
}

// VisitorFunc adapts an ordinary function to the Visitor interface.
type VisitorFunc[K any] func(key K)

// Visit calls f(key).
func (f VisitorFunc[K]) Visit(key K) {
	f(key)
}
