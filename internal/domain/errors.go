package domain

import "errors"

var ErrRepositoryAccess = errors.New("repository not accessible")
var ErrPathUnresolved = errors.New("path status unresolved")
var ErrIndexWrite = errors.New("index write failed")
var ErrCommitCreate = errors.New("commit creation failed")
var ErrCloneTransport = errors.New("clone transport failed")
var ErrRemoteRequest = errors.New("remote request failed")
