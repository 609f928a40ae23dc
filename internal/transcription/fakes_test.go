package transcription

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
)

type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    []string
	gets    []string
	putErr  error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}}
}

func objectKey(bucket, key string) string { return bucket + "/" + key }

func (f *fakeObjectStore) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := objectKey(sdkaws.ToString(in.Bucket), sdkaws.ToString(in.Key))
	f.puts = append(f.puts, name)
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[name] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectStore) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := objectKey(sdkaws.ToString(in.Bucket), sdkaws.ToString(in.Key))
	f.gets = append(f.gets, name)
	data, ok := f.objects[name]
	if !ok {
		return nil, fmt.Errorf("NoSuchKey: %s", name)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

type fakeJobService struct {
	mu       sync.Mutex
	started  []*transcribe.StartTranscriptionJobInput
	statuses []types.TranscriptionJob
	polls    int
	startErr error
	// onComplete runs when a COMPLETED status is returned, so tests can
	// place the output document where the job would have written it.
	onComplete func(jobName string)
}

func (f *fakeJobService) StartTranscriptionJob(_ context.Context, in *transcribe.StartTranscriptionJobInput, _ ...func(*transcribe.Options)) (*transcribe.StartTranscriptionJobOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, in)
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &transcribe.StartTranscriptionJobOutput{
		TranscriptionJob: &types.TranscriptionJob{
			TranscriptionJobName:   in.TranscriptionJobName,
			TranscriptionJobStatus: types.TranscriptionJobStatusInProgress,
		},
	}, nil
}

func (f *fakeJobService) GetTranscriptionJob(_ context.Context, in *transcribe.GetTranscriptionJobInput, _ ...func(*transcribe.Options)) (*transcribe.GetTranscriptionJobOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.polls
	if idx >= len(f.statuses) {
		idx = len(f.statuses) - 1
	}
	f.polls++
	tj := f.statuses[idx]
	tj.TranscriptionJobName = in.TranscriptionJobName
	if tj.TranscriptionJobStatus == types.TranscriptionJobStatusCompleted && f.onComplete != nil {
		f.onComplete(sdkaws.ToString(in.TranscriptionJobName))
	}
	return &transcribe.GetTranscriptionJobOutput{TranscriptionJob: &tj}, nil
}

func transcriptDocument(jobName, text string) []byte {
	return []byte(fmt.Sprintf(`{"jobName":%q,"accountId":"123456789012","results":{"transcripts":[{"transcript":%q}],"items":[]},"status":"COMPLETED"}`, jobName, text))
}
