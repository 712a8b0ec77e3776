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

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// InstanceLabel ties a StorageRelation to the Minio object it consumes.
	InstanceLabel = "operator.minio-ops.io/instance"
)

// StorageRelationSpec describes one consumer of the object-storage channel.
// The consumer side owns this spec; the provider only reads it.
type StorageRelationSpec struct {
	// App is the remote application name.
	// +kubebuilder:validation:Required
	App string `json:"app"`

	// Channel names the data-exchange channel. Defaults to object-storage.
	// +kubebuilder:validation:Optional
	Channel string `json:"channel,omitempty"`

	// SupportedVersions is a YAML-encoded list of protocol versions the
	// consumer speaks, in its order of preference.
	// +kubebuilder:validation:Optional
	SupportedVersions string `json:"supportedVersions,omitempty"`
}

// StorageRelationStatus carries the provider's side of the exchange. Only the
// leader-authorized provider instance writes it.
type StorageRelationStatus struct {
	// Version is the negotiated protocol version.
	// +kubebuilder:validation:Optional
	Version string `json:"version,omitempty"`

	// Data is the YAML-encoded connection payload.
	// +kubebuilder:validation:Optional
	Data string `json:"data,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:printcolumn:name="App",type=string,JSONPath=`.spec.app`
//+kubebuilder:printcolumn:name="Version",type=string,JSONPath=`.status.version`

// StorageRelation is the Schema for the storagerelations API
type StorageRelation struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   StorageRelationSpec   `json:"spec,omitempty"`
	Status StorageRelationStatus `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// StorageRelationList contains a list of StorageRelation
type StorageRelationList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []StorageRelation `json:"items"`
}

func init() {
	SchemeBuilder.Register(&StorageRelation{}, &StorageRelationList{})
}
