package client

// CreatedMessageCallback receives the outcome of a request that creates a
// resource. OnSuccess gets the new resource's identifier, taken from the last
// path segment of the entity URL the server returns.
type CreatedMessageCallback interface {
	OnSuccess(id string, message string)
	OnFail(message string, statusCode int)
	OnError(err error)
}

// MessageCallback receives the outcome of a request whose success carries
// only a confirmation message. SuccessCode declares which status counts as
// success for the endpoint; anything else is delivered through OnFail.
type MessageCallback interface {
	SuccessCode() int
	OnSuccess(message string)
	OnFail(message string, statusCode int)
	OnError(err error)
}

// ResultCallback receives a yes/no outcome with no body, as produced by HEAD
// requests.
type ResultCallback interface {
	SuccessCode() int
	OnSuccess()
	OnFail(statusCode int)
	OnError(err error)
}

// EntityCallback receives a decoded entity of type T. OnResponse is a raw
// observation hook invoked for every completed exchange, before the outcome
// is classified; it must not be treated as the result. Exactly one of
// OnReceive, OnErrorMessage and OnException follows.
type EntityCallback[T any] interface {
	OnResponse(statusCode int, body []byte)
	OnReceive(entity T)
	OnErrorMessage(message Message)
	OnException(err error)
}

// CreatedMessageFunc adapts plain functions to CreatedMessageCallback. Nil
// fields are no-ops.
type CreatedMessageFunc struct {
	Success func(id string, message string)
	Fail    func(message string, statusCode int)
	Error   func(err error)
}

func (f CreatedMessageFunc) OnSuccess(id, message string) {
	if f.Success != nil {
		f.Success(id, message)
	}
}

func (f CreatedMessageFunc) OnFail(message string, statusCode int) {
	if f.Fail != nil {
		f.Fail(message, statusCode)
	}
}

func (f CreatedMessageFunc) OnError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}

// MessageFunc adapts plain functions to MessageCallback. Code is the declared
// success status.
type MessageFunc struct {
	Code    int
	Success func(message string)
	Fail    func(message string, statusCode int)
	Error   func(err error)
}

func (f MessageFunc) SuccessCode() int { return f.Code }

func (f MessageFunc) OnSuccess(message string) {
	if f.Success != nil {
		f.Success(message)
	}
}

func (f MessageFunc) OnFail(message string, statusCode int) {
	if f.Fail != nil {
		f.Fail(message, statusCode)
	}
}

func (f MessageFunc) OnError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}

// ResultFunc adapts plain functions to ResultCallback.
type ResultFunc struct {
	Code    int
	Success func()
	Fail    func(statusCode int)
	Error   func(err error)
}

func (f ResultFunc) SuccessCode() int { return f.Code }

func (f ResultFunc) OnSuccess() {
	if f.Success != nil {
		f.Success()
	}
}

func (f ResultFunc) OnFail(statusCode int) {
	if f.Fail != nil {
		f.Fail(statusCode)
	}
}

func (f ResultFunc) OnError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}

// EntityFunc adapts plain functions to EntityCallback.
type EntityFunc[T any] struct {
	Response     func(statusCode int, body []byte)
	Receive      func(entity T)
	ErrorMessage func(message Message)
	Exception    func(err error)
}

func (f EntityFunc[T]) OnResponse(statusCode int, body []byte) {
	if f.Response != nil {
		f.Response(statusCode, body)
	}
}

func (f EntityFunc[T]) OnReceive(entity T) {
	if f.Receive != nil {
		f.Receive(entity)
	}
}

func (f EntityFunc[T]) OnErrorMessage(message Message) {
	if f.ErrorMessage != nil {
		f.ErrorMessage(message)
	}
}

func (f EntityFunc[T]) OnException(err error) {
	if f.Exception != nil {
		f.Exception(err)
	}
}
