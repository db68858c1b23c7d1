package gateway

import "fmt"

// ObjectKey derives the blob key for an object. The layout
// {projectRef}/{bucketName}/{objectName} is the only join between the metadata
// store and the blob store and must stay bit-exact across deployments.
func ObjectKey(projectRef, bucketName, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", projectRef, bucketName, objectName)
}
