package transcription

import (
	"context"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
)

// ObjectStore is the subset of the S3 client the stage uses.
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// JobService is the subset of the Transcribe client the stage uses.
type JobService interface {
	StartTranscriptionJob(ctx context.Context, params *transcribe.StartTranscriptionJobInput, optFns ...func(*transcribe.Options)) (*transcribe.StartTranscriptionJobOutput, error)
	GetTranscriptionJob(ctx context.Context, params *transcribe.GetTranscriptionJobInput, optFns ...func(*transcribe.Options)) (*transcribe.GetTranscriptionJobOutput, error)
}

var (
	_ ObjectStore = (*s3.Client)(nil)
	_ JobService  = (*transcribe.Client)(nil)
)

// jobStatusSource adapts GetTranscriptionJob to StatusSource.
type jobStatusSource struct {
	jobs JobService
}

func (s jobStatusSource) Status(ctx context.Context, jobName string) (JobStatus, error) {
	out, err := s.jobs.GetTranscriptionJob(ctx, &transcribe.GetTranscriptionJobInput{
		TranscriptionJobName: sdkaws.String(jobName),
	})
	if err != nil {
		return JobStatus{}, err
	}
	if out == nil || out.TranscriptionJob == nil {
		return JobStatus{}, nil
	}
	tj := out.TranscriptionJob
	status := JobStatus{
		State:         string(tj.TranscriptionJobStatus),
		FailureReason: sdkaws.ToString(tj.FailureReason),
	}
	if tj.Transcript != nil {
		status.TranscriptURI = sdkaws.ToString(tj.Transcript.TranscriptFileUri)
	}
	return status, nil
}
