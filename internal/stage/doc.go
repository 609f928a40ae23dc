// Package stage defines the contract shared by the pipeline stages.
//
// Every stage follows the same shape: Prepare fills the artifact paths the
// stage owns, Execute checks whether those artifacts already exist and only
// then calls out to YouTube, ffmpeg, AWS, or the language model. HealthCheck
// reports whether the stage's collaborators are configured, which the deps
// command surfaces.
package stage
