// Package job carries a single pipeline run between stages.
package job
