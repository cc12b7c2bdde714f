package repo

import "errors"

var ErrRepoURLRequired = errors.New("repo url is required")
var ErrClonePathRequired = errors.New("clone path is required")
var ErrRepoNameRequired = errors.New("repo name is required")
var ErrRepoExists = errors.New("repo already exists")
var ErrGitDirRequired = errors.New("git dir is required")
var ErrGitDirNotFound = errors.New("git dir does not exist")
