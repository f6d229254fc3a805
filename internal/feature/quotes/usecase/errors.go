package usecase

import "errors"

// ErrUnknownSymbol は監視対象ユニバースに存在しないシンボルが
// 要求されたことを示します。呼び出し側の入力誤りであり、
// プロバイダ障害によるフォールバックとは区別されます。
var ErrUnknownSymbol = errors.New("unknown symbol")
