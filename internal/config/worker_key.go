package config

type WorkerKeyStruct struct{}

func NewWorkerKeyStruct() *WorkerKeyStruct {
	return &WorkerKeyStruct{}
}

// ExpirySweepLock is the Redis SetNX lease key that elects a single
// instance to run the session expiry sweep.
func (r *WorkerKeyStruct) ExpirySweepLock() string {
	return "worker:expiry_sweep:lock"
}

var WorkerKey = NewWorkerKeyStruct()
