package gateway

import "testing"

func TestObjectKey(t *testing.T) {
	tests := []struct {
		projectRef string
		bucketName string
		objectName string
		want       string
	}{
		{"projectref", "avatars", "profile.png", "projectref/avatars/profile.png"},
		{"projectref", "avatars", "folder/nested/pic.jpg", "projectref/avatars/folder/nested/pic.jpg"},
		{"zzz", "b", "o", "zzz/b/o"},
	}

	for _, tt := range tests {
		got := ObjectKey(tt.projectRef, tt.bucketName, tt.objectName)
		if got != tt.want {
			t.Errorf("ObjectKey(%q, %q, %q) = %q, want %q", tt.projectRef, tt.bucketName, tt.objectName, got, tt.want)
		}
	}
}
