package internal

// Version is the current lexinote version
const Version = "2.0.0"
