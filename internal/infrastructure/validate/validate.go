// Package validate 提供请求载荷的客户端校验
// 为什么：非法载荷没必要浪费一次网络往返，发出去之前就地拦下；
// 错误信息走翻译器，直接可以给 UI 展示
package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"

	"kama_chat_client/pkg/errorx"
)

// validate 包级校验器实例
var validate = validator.New()

// trans 全局翻译器
var trans ut.Translator

// Init 初始化校验器和翻译器
// locale 参数指定需要初始化的语言，例如 "zh" 或 "en"
// 为什么：validator 默认的错误提示是英文，为了提升用户体验，需要配置国际化翻译
func Init(locale string) (err error) {
	// 注册一个获取 json tag 的自定义方法
	// 为什么：报错信息应该对应 json 字段名，而不是 Go 结构体字段名
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	zhT := zh.New() // 初始化中文翻译器
	enT := en.New() // 初始化英文翻译器

	// 第一个参数是备用（fallback）的语言环境，后面的参数是应该支持的语言环境
	uni := ut.New(enT, zhT, enT)

	var ok bool
	trans, ok = uni.GetTranslator(locale)
	if !ok {
		return fmt.Errorf("uni.GetTranslator(%s) failed", locale)
	}

	// 根据 locale 注册对应的默认翻译规则
	switch locale {
	case "zh":
		err = zh_translations.RegisterDefaultTranslations(validate, trans)
	default:
		err = en_translations.RegisterDefaultTranslations(validate, trans)
	}
	return
}

// Struct 校验一个请求结构体
// 校验失败返回带 CodeInvalidParam 的错误，消息已翻译并去掉结构体名前缀
func Struct(obj any) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || trans == nil {
		return errorx.Wrap(err, errorx.CodeInvalidParam, "请求参数错误")
	}

	// 翻译后的消息以 json 字段名开头，逐条拼接
	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		msgs = append(msgs, fe.Translate(trans))
	}
	return errorx.Newf(errorx.CodeInvalidParam, "请求参数错误: %s", strings.Join(msgs, "; "))
}
