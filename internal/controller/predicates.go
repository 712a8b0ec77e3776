/*
Copyright 2023.

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

package controller

import (
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/predicate"
)

// GenerationChangedPredicate reconciles on spec changes only. Status writes
// (our own included) bump the resource version but not the generation, so
// publishing relation data never feeds back into another run.
type GenerationChangedPredicate struct {
	predicate.Funcs
}

func (GenerationChangedPredicate) Create(e event.CreateEvent) bool {
	return true
}

func (GenerationChangedPredicate) Delete(e event.DeleteEvent) bool {
	return !e.DeleteStateUnknown
}

func (GenerationChangedPredicate) Update(e event.UpdateEvent) bool {
	if e.ObjectOld == nil || e.ObjectNew == nil {
		return false
	}
	return e.ObjectOld.GetGeneration() != e.ObjectNew.GetGeneration()
}

func (GenerationChangedPredicate) Generic(e event.GenericEvent) bool {
	// channel sources (leadership flips, external triggers) come in here
	return true
}
