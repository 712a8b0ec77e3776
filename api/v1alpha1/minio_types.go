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

// MinioSpec is the declarative configuration of one managed MinIO instance.
// Unset fields fall back to the operator-wide defaults.
type MinioSpec struct {
	// +kubebuilder:validation:Optional
	Port int `json:"port,omitempty"`

	// +kubebuilder:validation:Optional
	ConsolePort int `json:"console-port,omitempty"`

	// +kubebuilder:validation:Optional
	AccessKey string `json:"access-key,omitempty"`

	// SecretKey, when set, overrides the generated credential.
	// +kubebuilder:validation:Optional
	SecretKey string `json:"secret-key,omitempty"`

	// +kubebuilder:validation:Optional
	// +kubebuilder:validation:Enum=server;gateway
	Mode string `json:"mode,omitempty"`

	// Gateway backend identifier, required in gateway mode.
	// +kubebuilder:validation:Optional
	GatewayStorageService string `json:"gateway-storage-service,omitempty"`

	// +kubebuilder:validation:Optional
	StorageServiceEndpoint string `json:"storage-service-endpoint,omitempty"`

	// TLS material, treated as opaque blobs.
	// +kubebuilder:validation:Optional
	SSLKey string `json:"ssl-key,omitempty"`
	// +kubebuilder:validation:Optional
	SSLCert string `json:"ssl-cert,omitempty"`
	// +kubebuilder:validation:Optional
	SSLCA string `json:"ssl-ca,omitempty"`
}

// ComponentCondition is one component's status from the latest run.
type ComponentCondition struct {
	// +kubebuilder:validation:Required
	Name string `json:"name"`
	// +kubebuilder:validation:Required
	Status string `json:"status"`
	// +kubebuilder:validation:Optional
	Message string `json:"message,omitempty"`
}

// MinioStatus is the observed state of a managed instance.
type MinioStatus struct {
	// Status is the aggregate of the latest reconciliation run.
	// +kubebuilder:validation:Optional
	Status string `json:"status,omitempty"`

	// +kubebuilder:validation:Optional
	Message string `json:"message,omitempty"`

	// +kubebuilder:validation:Optional
	Components []ComponentCondition `json:"components,omitempty"`

	// +kubebuilder:validation:Optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// +kubebuilder:validation:Optional
	LastUpdateTime *metav1.Time `json:"lastUpdateTime,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:printcolumn:name="Status",type=string,JSONPath=`.status.status`
//+kubebuilder:printcolumn:name="Message",type=string,JSONPath=`.status.message`

// Minio is the Schema for the minios API
type Minio struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   MinioSpec   `json:"spec,omitempty"`
	Status MinioStatus `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// MinioList contains a list of Minio
type MinioList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Minio `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Minio{}, &MinioList{})
}
